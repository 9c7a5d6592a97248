package types

type RunMode string

const (
	// ModeLocal runs the API server with local defaults
	ModeLocal RunMode = "local"
	// ModeAPI runs the API server
	ModeAPI RunMode = "api"
	// ModeAWSLambdaAPI serves the API from an AWS Lambda function
	ModeAWSLambdaAPI RunMode = "aws_lambda_api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// StoreBackend selects the remote data client implementation
type StoreBackend string

const (
	// StoreBackendSupabase talks to a hosted Supabase project over PostgREST
	StoreBackendSupabase StoreBackend = "supabase"
	// StoreBackendPostgres talks SQL to the same schema directly
	StoreBackendPostgres StoreBackend = "postgres"
)
