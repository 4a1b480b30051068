// Package model defines the core domain models used throughout the application.
package model

// Order is a single order line from a Wildberries statistics export.
//
// JSON field names follow the statistics API, so raw API responses and
// exports made from them decode without renaming. ABC classification reads
// ProductID, PriceWithDisc and IsCancel plus the four descriptive fields
// (SupplierArticle, Barcode, Subject, Brand); everything else is carried
// through untouched.
type Order struct {
	Date            Time    `json:"date"`
	LastChangeDate  Time    `json:"lastChangeDate"`
	WarehouseName   string  `json:"warehouseName"`
	WarehouseType   string  `json:"warehouseType"`
	CountryName     string  `json:"countryName"`
	OblastOkrugName string  `json:"oblastOkrugName"`
	RegionName      string  `json:"regionName"`
	SupplierArticle string  `json:"supplierArticle"` // seller's SKU
	ProductID       int64   `json:"nmId"`            // marketplace nomenclature ID
	Barcode         string  `json:"barcode"`
	Category        string  `json:"category"` // product category, not the ABC tier
	Subject         string  `json:"subject"`
	Brand           string  `json:"brand"`
	TechSize        string  `json:"techSize"`
	IncomeID        int64   `json:"incomeID"`
	IsSupply        bool    `json:"isSupply"`
	IsRealization   bool    `json:"isRealization"`
	TotalPrice      float64 `json:"totalPrice"`
	DiscountPercent int     `json:"discountPercent"`
	SPP             float64 `json:"spp"`
	FinishedPrice   float64 `json:"finishedPrice"`
	PriceWithDisc   float64 `json:"priceWithDisc"` // revenue contribution of this line
	IsCancel        bool    `json:"isCancel"`
	CancelDate      Time    `json:"cancelDate"`
	Sticker         string  `json:"sticker"`
	GNumber         string  `json:"gNumber"`
	SRID            string  `json:"srid"` // unique order identifier
}
