package watsonx

// Config contains watsonx provider configuration.
// Endpoint is the watsonx.ai base URL; IAMURL is the IBM Cloud identity
// endpoint used for the apikey-to-token exchange.
type Config struct {
	APIKey   string `env:"WATSONX_API_KEY"`
	SpaceID  string `env:"WATSONX_SPACE_ID"`
	Endpoint string `env:"WATSONX_ENDPOINT" envDefault:"https://us-south.ml.cloud.ibm.com"`
	IAMURL   string `env:"WATSONX_IAM_URL"  envDefault:"https://iam.cloud.ibm.com/identity/token"`
	Timeout  int    `env:"WATSONX_TIMEOUT"  envDefault:"60"`
}
