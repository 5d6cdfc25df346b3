//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package config

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// StorageDriver selects the post repository implementation
// ENUM(file,postgres)
type StorageDriver string
