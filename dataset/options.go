package dataset

import (
	"fmt"
	"os"

	defaults "github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v3"
)

const (
	DriverMysql    = "mysql"
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

const (
	// AllTables requests every table of the database.
	AllTables = "*"
	// GlobalCondition is the Conditions key applied to tables without their own entry.
	GlobalCondition = "GLOBAL"
)

// Options configures a Loader. Host, User and Database are required for
// network drivers; sqlite only needs Database (the file path).
type Options struct {
	Driver   string `yaml:"driver" default:"mysql"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset" default:"utf8mb4"`

	//clear the shared cache before every load
	Refresh bool `yaml:"refresh"`
	//nil means AllTables
	Tables []string `yaml:"tables"`
	//table name or GlobalCondition => condition without the WHERE keyword
	Conditions map[string]string `yaml:"conditions"`
}

var defaultPorts = map[string]int{
	DriverMysql:    3306,
	DriverPostgres: 5432,
}

// LoadOptions reads Options from a yaml file and applies defaults.
func LoadOptions(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options %s: %w", path, err)
	}
	opts.SetDefaults()
	return opts, nil
}

// SetDefaults fills zero valued fields from their default tags.
func (o *Options) SetDefaults() {
	defaults.SetDefaults(o)
	if o.Port == 0 {
		o.Port = defaultPorts[o.Driver]
	}
}

func (o Options) validate() error {
	if _, ok := dialects[o.Driver]; !ok {
		return fmt.Errorf("%w: %q", ErrDriverUnsupported, o.Driver)
	}
	if o.Database == "" {
		return fmt.Errorf("%w: database", ErrOptionRequired)
	}
	if o.Driver == DriverSqlite {
		return nil
	}
	if o.Host == "" {
		return fmt.Errorf("%w: host", ErrOptionRequired)
	}
	if o.User == "" {
		return fmt.Errorf("%w: user", ErrOptionRequired)
	}
	return nil
}

func (o Options) wildcard() bool {
	return o.Tables == nil || sliceContain(o.Tables, AllTables)
}
