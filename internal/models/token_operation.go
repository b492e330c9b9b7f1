package models

import (
	"time"
)

// TokenOperation is one row per token_operations message
type TokenOperation struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Operation  string    `gorm:"size:32;not null;index" json:"operation"`
	Mint       string    `gorm:"size:100;not null;index" json:"mint"`
	FromAddr   string    `gorm:"size:100;default:''" json:"from"`
	ToAddr     string    `gorm:"size:100;default:''" json:"to"`
	Amount     uint64    `gorm:"not null;default:0" json:"amount"`
	Signature  string    `gorm:"size:128;default:''" json:"signature"`
	Network    string    `gorm:"size:32;default:''" json:"network"`
	Simulated  bool      `gorm:"default:false" json:"simulated"`
	OccurredAt time.Time `gorm:"index" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (TokenOperation) TableName() string {
	return "token_operations"
}

// TokenBalanceSnapshot is a periodic record of a holder balance
type TokenBalanceSnapshot struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Mint      string    `gorm:"size:100;not null;index:idx_snapshot_mint_time" json:"mint"`
	Owner     string    `gorm:"size:100;not null" json:"owner"`
	Balance   uint64    `gorm:"not null" json:"balance"`
	Decimals  int       `gorm:"not null" json:"decimals"`
	TakenAt   time.Time `gorm:"not null;index:idx_snapshot_mint_time" json:"taken_at"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (TokenBalanceSnapshot) TableName() string {
	return "token_balance_snapshots"
}
