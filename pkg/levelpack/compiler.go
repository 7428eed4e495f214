package levelpack

// Compiler packages levels into archives.
type Compiler interface {
	// CompileLevel validates meta and writes the descriptor and optional thumbnail
	// into the level's archive.
	CompileLevel(meta *LevelMetaData) (*Artifact, error)

	// CompileLevelContent additionally packages the level content at contentPath
	// and the assets it depends on that the base game does not ship.
	CompileLevelContent(meta *LevelMetaData, contentPath string) (*Artifact, error)
}

// Asset is a dependent asset that must travel inside the level archive.
type Asset struct {
	// SourcePath is the local file to copy.
	SourcePath string

	// ArchivePath is the slash-separated path of the asset relative to the game's asset root.
	// The entry is stored under AssetsEntryDir + ArchivePath.
	ArchivePath string
}

// AssetResolver determines which assets referenced by level content have to be
// packaged with the level because the base game does not ship them.
//
// Implementations that cannot scan level content return an error wrapping ErrNotImplemented.
type AssetResolver interface {
	ResolveAssets(contentPath string) ([]Asset, error)
}
