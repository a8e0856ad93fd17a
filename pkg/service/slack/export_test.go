package slack

var (
	TruncateToMaxBytes = truncateToMaxBytes
	BuildAlertBlocks   = buildAlertBlocks
)
