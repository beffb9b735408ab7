package catalogControllers

import "github.com/qasemB/Ecommerce-Api/models"

type ColorInput struct {
	Title string `json:"title" binding:"required,max=100,text"`
	Code  string `json:"code" binding:"required,color"`
}

type BrandInput struct {
	OriginalName string `json:"original_name" binding:"required,max=255,text"`
	PersianName  string `json:"persian_name" binding:"omitempty,max=255,text"`
	Descriptions string `json:"descriptions" binding:"omitempty,text"`
	Logo         string `json:"logo" binding:"omitempty,max=255"`
}

type GuaranteeInput struct {
	Title        string `json:"title" binding:"required,max=255,text"`
	Descriptions string `json:"descriptions" binding:"omitempty,text"`
	Length       *int   `json:"length" binding:"omitempty,min=0"`
	LengthUnit   string `json:"length_unit" binding:"omitempty,max=50,text"`
}

type DeliveryInput struct {
	Title    string `json:"title" binding:"required,max=255,text"`
	Amount   *int64 `json:"amount" binding:"required,min=0"`
	Time     *int   `json:"time" binding:"omitempty,min=0"`
	TimeUnit string `json:"time_unit" binding:"omitempty,max=50,text"`
}

var Colors = resource[models.Color, ColorInput]{
	noun:   "Color",
	unique: "title",
	apply: func(in ColorInput, m *models.Color) {
		m.Title = in.Title
		m.Code = in.Code
	},
}

var Brands = resource[models.Brand, BrandInput]{
	noun:   "Brand",
	unique: "original_name",
	apply: func(in BrandInput, m *models.Brand) {
		m.OriginalName = in.OriginalName
		m.PersianName = in.PersianName
		m.Descriptions = in.Descriptions
		if in.Logo != "" {
			m.Logo = in.Logo
		}
	},
}

var Guarantees = resource[models.Guarantee, GuaranteeInput]{
	noun:   "Guarantee",
	unique: "title",
	apply: func(in GuaranteeInput, m *models.Guarantee) {
		m.Title = in.Title
		m.Descriptions = in.Descriptions
		m.Length = in.Length
		m.LengthUnit = in.LengthUnit
	},
}

var Deliveries = resource[models.Delivery, DeliveryInput]{
	noun:   "Delivery",
	unique: "title",
	apply: func(in DeliveryInput, m *models.Delivery) {
		m.Title = in.Title
		m.Amount = *in.Amount
		m.Time = in.Time
		m.TimeUnit = in.TimeUnit
	},
}
