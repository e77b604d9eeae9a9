package models

import (
	"time"
)

type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"not null;size:50;uniqueIndex:idx_favorite_user_item"`
	ItemName  string    `json:"item_name" gorm:"not null;size:100;uniqueIndex:idx_favorite_user_item"`
	CreatedAt time.Time `json:"created_at"`
}

type Rating struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrderReference string    `json:"order_reference" gorm:"uniqueIndex;not null;size:50"`
	Rating         int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Feedback       string    `json:"feedback" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Rating) TableName() string {
	return "order_ratings"
}
