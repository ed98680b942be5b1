package constants

// Sale location types
const (
	SaleLocationOnline = "online"
	SaleLocationLocal  = "local"
)

// Setting keys
const (
	SettingKeyConversionRate = "conversion_rate"
)
