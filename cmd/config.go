package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	WarehouseAddress string

	CourierBaseURL      string
	CourierClientID     string
	CourierClientSecret string

	PaymentsBaseURL string
	PaymentsAPIKey  string

	NotificationsBaseURL string
	NotificationsAPIKey  string
	MerchantEmail        string
	MerchantPhone        string

	CustomerDirectoryURL    string
	CustomerDirectoryAPIKey string

	RedisURL string
}
