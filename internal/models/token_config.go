package models

import (
	"time"
)

// TokenConfig is a token registered by a mint event
type TokenConfig struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Mint         string    `gorm:"size:100;uniqueIndex;not null" json:"mint"`
	Symbol       string    `gorm:"size:16;not null" json:"symbol"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Decimals     int       `gorm:"not null" json:"decimals"`
	TotalSupply  uint64    `gorm:"not null" json:"total_supply"`
	TokenAccount string    `gorm:"size:100;default:''" json:"token_account"`
	Creator      string    `gorm:"size:128;default:''" json:"creator"`
	Network      string    `gorm:"size:32;default:''" json:"network"`
	Simulated    bool      `gorm:"default:false" json:"simulated"`
	MintDisabled bool      `gorm:"default:false" json:"mint_disabled"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TokenConfig) TableName() string {
	return "token_info"
}
