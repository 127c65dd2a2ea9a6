package cache

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// SceneKey identifies a scene computed from an input with a layout config.
	SceneKey(inputHash string, opts SceneKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts holds every layout parameter that changes a scene.
type SceneKeyOpts struct {
	WrapWidth      int     `json:"wrap_width"`
	Margin         float64 `json:"margin"`
	BoxWidth       float64 `json:"box_width"`
	RowSize        int     `json:"row_size"`
	ColumnSpacing  float64 `json:"column_spacing"`
	FirstRowOffset float64 `json:"first_row_offset"`
	RowSpacing     float64 `json:"row_spacing"`
}

// ArtifactKeyOpts holds every render parameter that changes an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Title    string  `json:"title,omitempty"`
	Subtitle string  `json:"subtitle,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer produces "scene:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SceneKey generates a key for scene caching.
func (DefaultKeyer) SceneKey(inputHash string, opts SceneKeyOpts) string {
	return hashKey("scene", inputHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
