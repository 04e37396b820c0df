package types

// Config holds the parameters for Store.Open.
type Config struct {
	// DataDir is the directory holding the satchel.db file. Created if it
	// does not exist. Empty means the current working directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
