package config

type Store struct {
	Path InterpolatedString `yaml:"path"`
}

func NewDefaultStoreConfig() Store {
	return Store{
		Path: "${COLLAGIO_STORE_PATH:-collagio.db}",
	}
}
