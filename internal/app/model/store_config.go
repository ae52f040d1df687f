package model

// ConfigBaseRosaryPrice is the config key holding the configurator base price.
const ConfigBaseRosaryPrice = "base_rosary_price"

// DefaultBaseRosaryPrice is used until an admin sets one.
const DefaultBaseRosaryPrice = 40.00

type StoreConfig struct {
	Key   string  `gorm:"primarykey;type:varchar(64)" json:"key"`
	Value float64 `json:"value"`
}

func (StoreConfig) TableName() string {
	return "config"
}
