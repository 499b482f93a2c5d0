package game

const (
	// TimeStep is the fixed simulation step in seconds.
	TimeStep float32 = 1.0 / 60.0
	// BaseSpeed scales Velocity into playfield units per second.
	BaseSpeed float32 = 500

	// DespawnMargin is how far past the playfield edge an auto-despawn movable may go.
	DespawnMargin float32 = 200

	SpriteScale float32 = 0.5

	// ExplosionLen is the number of cells in the explosion sprite sheet.
	ExplosionLen = 16
)

var (
	PlayerSize      = SpriteSize{W: 144, H: 75, Scale: SpriteScale}
	PlayerLaserSize = SpriteSize{W: 9, H: 54, Scale: SpriteScale}
	EnemySize       = SpriteSize{W: 144, H: 75, Scale: SpriteScale}
	EnemyLaserSize  = SpriteSize{W: 17, H: 55, Scale: SpriteScale}
)
