package cfg

type Cfg struct {
	// Application configuration
	Port        string
	DBPath      string
	SourcesFile string
	RulesFile   string

	// Collection pipeline configuration
	WorkerCount     int
	FetchTimeout    int
	EntryLimit      int
	RunTimeout      int
	KeywordLimit    int
	CollectInterval int
	ExtractContent  bool
	ExtractLimit    int

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
