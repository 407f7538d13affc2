package valuationcntrl

type createValuationRequest struct {
	CarName       string  `json:"car_name" validate:"max=120"`
	Year          int     `json:"year" validate:"required,gte=1900"`
	ShowroomPrice float64 `json:"showroom_price" validate:"gte=0"`
	KmsDriven     float64 `json:"kms_driven" validate:"gte=0"`
	FuelType      string  `json:"fuel_type" validate:"required,oneof=Petrol Diesel CNG LPG"`
	SellerType    string  `json:"seller_type" validate:"required,oneof=Dealer Individual"`
	Transmission  string  `json:"transmission" validate:"required,oneof=Manual Automatic"`
}

type createValuationResponse struct {
	ValuationID           string  `json:"valuation_id"`
	CarName               string  `json:"car_name"`
	PredictedValue        float64 `json:"predicted_value"`
	PredictedValueDisplay string  `json:"predicted_value_display"`
	RetentionRatio        float64 `json:"retention_ratio"`
	RetentionDisplay      string  `json:"retention_display"`
	RetentionCapped       float64 `json:"retention_capped"`
	Age                   int     `json:"age"`
}

type getModelResponse struct {
	Engine          string   `json:"engine"`
	Accuracy        float64  `json:"accuracy"`
	MAE             float64  `json:"mae"`
	AccuracyDisplay string   `json:"accuracy_display"`
	MAEDisplay      string   `json:"mae_display"`
	Columns         []string `json:"columns"`
}

type getDepreciationRequest struct {
	ShowroomPrice float64 `query:"showroom_price" validate:"gt=0"`
	Year          int     `query:"year" validate:"required,gte=1900"`
}

type errorResponse struct {
	Error string `json:"error"`
}
