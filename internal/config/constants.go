package config

const (
	// DefaultDatabasePath is the default path for the Kobo annotation database
	DefaultDatabasePath = "./KoboReader.sqlite"

	// DefaultColorMarkers maps Kobo color codes 0..3 to marker symbols
	DefaultColorMarkers = "🟡,🔴,🔵,🟢"
)
