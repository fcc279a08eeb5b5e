package config

import "os"

// DeclFileExtensions are the recognized declaration file extensions
var DeclFileExtensions = []string{".yaml", ".yml"}

// IsTestMode indicates if the program is running in test mode.
// This is set once at startup in main.go from TestModeEnv.
var IsTestMode = false

const (
	TestModeEnv   = "SYMTAB_TEST_MODE"
	ConfigPathEnv = "SYMTAB_CONFIG"
)

// Project file defaults
const (
	ProjectFileName = "symtab.yaml"
	DefaultStore    = "symtab.db"
	DefaultListen   = "127.0.0.1:7411"
	DefaultHistory  = ".symtab_history"
)

// Color modes for entry listings
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Type names as written in declarations and listings
const (
	UndefinedTypeName = "undefined"
	IntTypeName       = "int"
	StrTypeName       = "string"
	BoolTypeName      = "bool"
	AnyTypeName       = "any"
	TypeSeparator     = "|"
)

// Inspector service
const (
	ProtoFileName        = "symtab.proto"
	InspectorServiceName = "symtab.Inspector"
	EntryMessageName     = "symtab.Entry"
	EntryListMessageName = "symtab.EntryList"
)

// InitTestMode sets IsTestMode from the environment.
func InitTestMode() {
	IsTestMode = os.Getenv(TestModeEnv) == "1"
}
