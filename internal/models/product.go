package models

// ProductType identifies the catalog category.
type ProductType string

const (
	ProductPanel    ProductType = "panel"
	ProductInverter ProductType = "inverter"
	ProductBattery  ProductType = "battery"
)

// Product is a catalog entry. Only the fields relevant to its type are
// populated: WattageW for panels, CapacityKwh for batteries, RatedKw for
// inverters.
type Product struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Manufacturer   string      `json:"manufacturer"`
	Type           ProductType `json:"type"`
	WattageW       float64     `json:"wattageW,omitempty"`
	CapacityKwh    float64     `json:"capacityKwh,omitempty"`
	RatedKw        float64     `json:"ratedKw,omitempty"`
	UnitPriceCents int64       `json:"unitPriceCents"`
	WarrantyYears  int         `json:"warrantyYears"`
	Tier           string      `json:"tier,omitempty"`
}

// Addon is an optional extra sold alongside the system. Priced at retail
// plus a flat install cost; excluded from rebate eligibility.
type Addon struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	RetailPriceCents int64  `json:"retailPriceCents"`
	InstallCostCents int64  `json:"installCostCents"`
}
