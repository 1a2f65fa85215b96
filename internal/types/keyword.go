package types

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partition names the subset of keyword records that is replaced as a unit
// during a sheet sync.
type Partition string

const (
	PartitionPackage        Partition = "package"
	PartitionDogmaru        Partition = "dogmaru"
	PartitionDogmaruExclude Partition = "dogmaru-exclude"
	PartitionPet            Partition = "pet"
)

func ParsePartition(s string) (Partition, error) {
	switch Partition(s) {
	case PartitionPackage, PartitionDogmaru, PartitionDogmaruExclude, PartitionPet:
		return Partition(s), nil
	}
	return "", fmt.Errorf("unknown partition %q (want package | dogmaru | dogmaru-exclude | pet)", s)
}

// Keyword is one keyword entry owned by a partition. Within a partition the
// composite (company, keyword, popularTopic, url) identifies it logically;
// duplicates under that key can transiently exist after re-import churn.
type Keyword struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Company          string             `bson:"company" json:"company"`
	Keyword          string             `bson:"keyword" json:"keyword"`
	Visibility       bool               `bson:"visibility" json:"visibility"`
	PopularTopic     string             `bson:"popularTopic" json:"popularTopic"`
	URL              string             `bson:"url" json:"url"`
	SheetType        Partition          `bson:"sheetType" json:"sheetType"`
	Rank             int                `bson:"rank,omitempty" json:"rank,omitempty"`
	RankWithCafe     int                `bson:"rankWithCafe,omitempty" json:"rankWithCafe,omitempty"`
	IsUpdateRequired bool               `bson:"isUpdateRequired,omitempty" json:"isUpdateRequired,omitempty"`
	IsNewLogic       bool               `bson:"isNewLogic,omitempty" json:"isNewLogic,omitempty"`
	LastChecked      time.Time          `bson:"lastChecked,omitempty" json:"lastChecked,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt        time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// RootKeyword is the monthly-guarantee sheet variant. The keyword field is
// stored composite as "<base>(<company>)" and the whole collection is
// replaced on each sync.
type RootKeyword struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Company          string             `bson:"company" json:"company"`
	Keyword          string             `bson:"keyword" json:"keyword"`
	Visibility       bool               `bson:"visibility" json:"visibility"`
	URL              string             `bson:"url" json:"url"`
	PopularTopic     string             `bson:"popularTopic,omitempty" json:"popularTopic,omitempty"`
	Rank             int                `bson:"rank,omitempty" json:"rank,omitempty"`
	RankWithCafe     int                `bson:"rankWithCafe,omitempty" json:"rankWithCafe,omitempty"`
	IsUpdateRequired bool               `bson:"isUpdateRequired,omitempty" json:"isUpdateRequired,omitempty"`
	KeywordType      string             `bson:"keywordType,omitempty" json:"keywordType,omitempty"`
	MatchedTitle     string             `bson:"matchedTitle,omitempty" json:"matchedTitle,omitempty"`
	PostVendorName   string             `bson:"postVendorName,omitempty" json:"postVendorName,omitempty"`
	RestaurantName   string             `bson:"restaurantName,omitempty" json:"restaurantName,omitempty"`
	LastChecked      time.Time          `bson:"lastChecked,omitempty" json:"lastChecked,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt        time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// VisibilityStats is the dashboard counter summary.
type VisibilityStats struct {
	Total   int64 `json:"total"`
	Visible int64 `json:"visible"`
	Hidden  int64 `json:"hidden"`
}
