package arch

// ConcernCategory describes one responsibility area: function-name keywords
// and import indicators that suggest a module touches it.
type ConcernCategory struct {
	Keywords []string
	Imports  []string
	Label    string
}

// Taxonomy maps category keys to their detection rules. The table is a
// policy input: callers may supply their own to tune concern detection.
type Taxonomy map[string]ConcernCategory

// DefaultTaxonomy returns the standard seven-category concern taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"io": {
			Keywords: []string{"open", "read", "write", "file", "path", "os.path", "pathlib", "shutil"},
			Imports:  []string{"os", "io", "pathlib", "shutil", "tempfile", "glob"},
			Label:    "File I/O",
		},
		"network": {
			Keywords: []string{"request", "response", "http", "url", "socket", "api"},
			Imports:  []string{"requests", "urllib", "http", "aiohttp", "httpx", "socket", "flask", "fastapi", "django"},
			Label:    "Network/HTTP",
		},
		"database": {
			Keywords: []string{"query", "cursor", "execute", "commit", "session", "model"},
			Imports:  []string{"sqlalchemy", "sqlite3", "psycopg2", "pymongo", "redis", "mysql", "peewee"},
			Label:    "Database",
		},
		"business_logic": {
			Keywords: []string{"calculate", "compute", "process", "validate", "transform", "parse", "convert"},
			Imports:  []string{},
			Label:    "Business Logic",
		},
		"presentation": {
			Keywords: []string{"render", "template", "view", "display", "format", "serialize", "jsonify"},
			Imports:  []string{"jinja2", "mako", "django.template"},
			Label:    "Presentation",
		},
		"logging": {
			Keywords: []string{"log", "logger", "logging", "debug", "warning", "error"},
			Imports:  []string{"logging", "loguru", "structlog"},
			Label:    "Logging/Monitoring",
		},
		"testing": {
			Keywords: []string{"test", "assert", "mock", "fixture", "setUp", "tearDown"},
			Imports:  []string{"pytest", "unittest", "mock", "hypothesis"},
			Label:    "Testing",
		},
	}
}

// archPattern is one recognizable project layout.
type archPattern struct {
	name       string
	label      string
	indicators []string
}

// architecturePatterns lists known layouts in match-priority order: on a
// confidence tie the earlier entry wins.
var architecturePatterns = []archPattern{
	{
		name:       "mvc",
		label:      "MVC (Model-View-Controller)",
		indicators: []string{"models", "views", "controllers", "templates"},
	},
	{
		name:       "layered",
		label:      "Layered Architecture",
		indicators: []string{"models", "services", "routes", "controllers", "utils", "helpers"},
	},
	{
		name:       "microservice",
		label:      "Microservices",
		indicators: []string{"Dockerfile", "docker-compose", "gateway", "service"},
	},
	{
		name:       "monolith",
		label:      "Monolithic",
		indicators: []string{"app", "main", "server"},
	},
}

// minPatternConfidence is the match ratio below which no pattern is reported.
const minPatternConfidence = 0.3
