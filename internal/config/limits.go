package config

const (
	// MaxTitleLength is the maximum length for document titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxTitleLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as document titles for consistency.
	MaxFolderNameLength = 255

	// MaxFolderDepth bounds every ancestor walk over the folder tree.
	// A well-formed tree reaches a root long before this; exceeding it
	// means the parent chain is corrupt (a cycle the move guard should
	// have made impossible), and the walk aborts with a
	// StructuralIntegrityError instead of looping forever.
	MaxFolderDepth = 128
)
