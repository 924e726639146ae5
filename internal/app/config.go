package app

// Constants
const (
	BackupSuffix    = ".backup"
	TmpSuffix       = ".tmp"
	FilePermissions = 0644

	// ICS constants
	ICSProductID     = "-//afval-ical//NL"
	ICSVersion       = "2.0"
	ICSCalendarName  = "Afvalkalender"
	ICSTimezone      = "Europe/Amsterdam"
	ICSSummaryPrefix = "Afval - "
	ICSPublishTTL    = "PT12H"

	// Export formats
	FormatICS  = "ics"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"

	// noopMarker is the href used by the source page for anchors without a target
	noopMarker = "javascript:void(0);"
)
