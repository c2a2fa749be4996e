package constants

// Pipeline

const (
	WarehouseBatchSizeDefault = 5000
	TimeFormatYearSeconds     = "20060102T150405"      // used for human readable object names
	TimeFormatYearSecondsTZ   = "20060102T150405-0700" // a format that includes the time zone and is compatible with warehouse timestamps.
	EnvVarPrefix              = "EP"                   // prefix for environment variables in twelveFactorMode
	ConnectionTypeSnowflake   = "snowflake"
	ConnectionTypeMockWh      = "mockWarehouse"
	ConnectionTypeS3          = "s3"
	ContentTypeCsv            = "text/csv"
	ContentTypeOctetStream    = "application/octet-stream"
	TemplateTokenName         = "{name}"
	TemplateTokenTimestamp    = "{timestamp}"
	FieldNameSource           = "source"
	FieldNameRowId            = "rowid"
	FieldNameVariable         = "variable"
	FieldNameValue            = "value"
	FieldNameWorkspaceId      = "workspace_id"
	FieldNameMrn              = "mrn"
	FieldNameMetadataFileName = "metadata_file_name"
)

// Registry

const (
	RegistryObjectNameDefault   = "mapping_files_patients.csv"
	RegistryHeaderFileName      = "filename"
	RegistryHeaderPersonalId    = "personal_id"
	RegistryLockSuffix          = ".lock"
	RegistryLockRetryMaxDefault = 30
	RegistryLockRetryWaitMs     = 1000
)
