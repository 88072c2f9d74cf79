package domain

import "strings"

type ClothingItem struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	ArticleType string    `json:"article_type"`
	SubCategory string    `json:"sub_category"`
	BaseColour  string    `json:"base_colour"`
	Season      string    `json:"season"`
	Usage       string    `json:"usage"`
	Embedding   []float64 `json:"embedding,omitempty"`
}

// Category resolves the item's slot category from its sub-category, falling
// back to the article type for rows that were imported without one.
func (c ClothingItem) Category() Category {
	if cat := ParseCategory(c.SubCategory); cat != CategoryUnknown {
		return cat
	}
	return categoryForArticleType(c.ArticleType)
}

// Category is the closed set of outfit slots an item can fill.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryTop
	CategoryBottom
	CategoryDress
	CategoryJumpsuit
	CategorySet
	CategoryOuterwear
	CategoryFootwear
	CategoryAccessory
)

// Categories lists every known category in slot order.
var Categories = []Category{
	CategoryTop, CategoryBottom, CategoryDress, CategoryJumpsuit, CategorySet,
	CategoryOuterwear, CategoryFootwear, CategoryAccessory,
}

// String returns the slot name used in requests and diagnostics.
func (c Category) String() string {
	switch c {
	case CategoryTop:
		return "Top"
	case CategoryBottom:
		return "Bottom"
	case CategoryDress:
		return "Dress"
	case CategoryJumpsuit:
		return "Jumpsuit"
	case CategorySet:
		return "Set"
	case CategoryOuterwear:
		return "Outerwear"
	case CategoryFootwear:
		return "Footwear"
	case CategoryAccessory:
		return "Accessory"
	case CategoryUnknown:
		return "Unknown"
	}
	return "Unknown"
}

// SubCategory returns the store taxonomy name for the category.
func (c Category) SubCategory() string {
	switch c {
	case CategoryTop:
		return "Topwear"
	case CategoryBottom:
		return "Bottomwear"
	case CategoryDress, CategoryJumpsuit, CategorySet, CategoryOuterwear, CategoryFootwear, CategoryAccessory:
		return c.String()
	case CategoryUnknown:
		return ""
	}
	return ""
}

// IsBase reports whether the category forms the base shape of an outfit.
func (c Category) IsBase() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryDress, CategoryJumpsuit, CategorySet:
		return true
	case CategoryOuterwear, CategoryFootwear, CategoryAccessory, CategoryUnknown:
		return false
	}
	return false
}

// IsOnePiece reports whether a single item of this category covers the whole base outfit.
func (c Category) IsOnePiece() bool {
	switch c {
	case CategoryDress, CategoryJumpsuit, CategorySet:
		return true
	case CategoryTop, CategoryBottom, CategoryOuterwear, CategoryFootwear, CategoryAccessory, CategoryUnknown:
		return false
	}
	return false
}

var categoryNames = map[string]Category{
	"top":         CategoryTop,
	"topwear":     CategoryTop,
	"bottom":      CategoryBottom,
	"bottomwear":  CategoryBottom,
	"dress":       CategoryDress,
	"jumpsuit":    CategoryJumpsuit,
	"set":         CategorySet,
	"outerwear":   CategoryOuterwear,
	"footwear":    CategoryFootwear,
	"shoes":       CategoryFootwear,
	"accessory":   CategoryAccessory,
	"accessories": CategoryAccessory,
}

// ParseCategory accepts slot names (Top) and sub-category names (Topwear), case-insensitively.
func ParseCategory(name string) Category {
	return categoryNames[strings.ToLower(strings.TrimSpace(name))]
}

var articleTypeCategories = map[string]Category{
	"tshirts":      CategoryTop,
	"shirts":       CategoryTop,
	"tops":         CategoryTop,
	"sweaters":     CategoryTop,
	"sweatshirts":  CategoryTop,
	"kurtas":       CategoryTop,
	"tunics":       CategoryTop,
	"jackets":      CategoryOuterwear,
	"blazers":      CategoryOuterwear,
	"coats":        CategoryOuterwear,
	"jeans":        CategoryBottom,
	"trousers":     CategoryBottom,
	"shorts":       CategoryBottom,
	"track pants":  CategoryBottom,
	"skirts":       CategoryBottom,
	"leggings":     CategoryBottom,
	"capris":       CategoryBottom,
	"dresses":      CategoryDress,
	"jumpsuit":     CategoryJumpsuit,
	"playsuit":     CategoryJumpsuit,
	"casual shoes": CategoryFootwear,
	"sports shoes": CategoryFootwear,
	"formal shoes": CategoryFootwear,
	"heels":        CategoryFootwear,
	"flats":        CategoryFootwear,
	"sandals":      CategoryFootwear,
	"flip flops":   CategoryFootwear,
	"watches":      CategoryAccessory,
	"handbags":     CategoryAccessory,
	"belts":        CategoryAccessory,
	"sunglasses":   CategoryAccessory,
	"caps":         CategoryAccessory,
	"scarves":      CategoryAccessory,
}

func categoryForArticleType(articleType string) Category {
	return articleTypeCategories[strings.ToLower(strings.TrimSpace(articleType))]
}
