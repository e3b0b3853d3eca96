package app

const (
	Name           = "walletgo"
	SourceURL      = "https://github.com/walletgo/walletgo"
	ConfigFilename = "config.json"
	DBFilename     = "app.db"
	LogFilename    = "app.log"
)
