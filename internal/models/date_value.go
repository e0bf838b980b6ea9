package models

import "time"

// DateValuePair associates a value with a calendar day
type DateValuePair[T any] struct {
	Date  time.Time `json:"date"`
	Value T         `json:"value"`
}
