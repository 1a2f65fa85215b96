// Package config holds the sheet registry: which spreadsheets and tabs each
// partition syncs against. Values load from an optional YAML file layered
// over the built-in defaults, so a test copy of the sheets can be swapped in
// without a rebuild.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/types"
)

type TabConfig struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

type KeywordTabs struct {
	Package        TabConfig `yaml:"package"`
	Dogmaru        TabConfig `yaml:"dogmaru"`
	DogmaruExclude TabConfig `yaml:"dogmaruExclude"`
	Pet            TabConfig `yaml:"pet"`
}

// ByPartition is the single place a partition turns into a tab. The switch
// is exhaustive over the Partition enum; adding a partition without a tab
// mapping fails loudly here instead of silently writing to the wrong tab.
func (t KeywordTabs) ByPartition(p types.Partition) (TabConfig, error) {
	switch p {
	case types.PartitionPackage:
		return t.Package, nil
	case types.PartitionDogmaru:
		return t.Dogmaru, nil
	case types.PartitionDogmaruExclude:
		return t.DogmaruExclude, nil
	case types.PartitionPet:
		return t.Pet, nil
	}
	return TabConfig{}, fmt.Errorf("no tab configured for partition %q", p)
}

type SheetTarget struct {
	SheetID string `yaml:"sheetId"`
	TabName string `yaml:"tabName"`
}

type KeywordSheets struct {
	SheetID string      `yaml:"sheetId"`
	Tabs    KeywordTabs `yaml:"tabs"`
}

type CronConfig struct {
	// Standard cron expressions; empty disables the job.
	SyncAll   string `yaml:"syncAll"`
	ImportAll string `yaml:"importAll"`
}

type Config struct {
	Keywords KeywordSheets `yaml:"keywords"`
	// RootSync is the monthly-guarantee source sheet (sheet → DB),
	// RootImport the export target (DB → sheet).
	RootSync   SheetTarget `yaml:"rootSync"`
	RootImport SheetTarget `yaml:"rootImport"`
	// ManagedTabMarker selects the tabs sequential reconciliation runs over:
	// any tab whose title contains this substring.
	ManagedTabMarker string     `yaml:"managedTabMarker"`
	PetCompanies     []string   `yaml:"petCompanies"`
	Cron             CronConfig `yaml:"cron"`
}

func Default() Config {
	return Config{
		Keywords: KeywordSheets{
			SheetID: "1vrN5gvtokWxPs8CNaNcvZQLWyIMBOIcteYXQbyfiZl0",
			Tabs: KeywordTabs{
				Package:        TabConfig{Name: "패키지", Label: "패키지"},
				Dogmaru:        TabConfig{Name: "도그마루", Label: "도그마루"},
				DogmaruExclude: TabConfig{Name: "도그마루 제외", Label: "도그마루 제외"},
				Pet:            TabConfig{Name: "애견", Label: "애견"},
			},
		},
		RootSync: SheetTarget{
			SheetID: "1CsO-R1LMrsQdUw7T1KEL2I4bMxAeYnZIklOgr8e_DPY",
			TabName: "월보장 시트",
		},
		RootImport: SheetTarget{
			SheetID: "1T9PHu-fH6HPmyYA9dtfXaDLm20XAPN-9mzlE2QTPkF0",
			TabName: "루트",
		},
		ManagedTabMarker: "노출체크 프로그램",
		PetCompanies:     []string{"서리펫", "도그마루"},
	}
}

// Load reads the registry from path layered over Default. An empty path or a
// missing file is not an error; the defaults stand.
func Load(path string, log *logger.Logger) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if log != nil {
				log.Debug("Sheet registry file not found, using defaults", "path", path)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("read sheet registry: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse sheet registry: %w", err)
	}
	if log != nil {
		log.Info("Sheet registry loaded", "path", path)
	}
	return cfg, nil
}
