package disk

type Config struct {
	Dir      string `yaml:"dir"`
	FileMode uint32 `yaml:"file_mode"`
	DirMode  uint32 `yaml:"dir_mode"`
}
