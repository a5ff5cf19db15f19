package predator

import "time"

const (
	DefaultProximityThreshold = 5
	DefaultSatiationCap       = 100
	DefaultAreaSize           = 30

	DefaultMoveInterval = 5 * time.Second
	DefaultDigestPause  = 5 * time.Second
	DefaultSettleDelay  = 500 * time.Millisecond
)

type Tuning struct {
	ProximityThreshold int           `yaml:"proximity_threshold" json:"proximity_threshold"`
	SatiationCap       int           `yaml:"satiation_cap" json:"satiation_cap"`
	AreaSize           int           `yaml:"area_size" json:"area_size"`
	MoveInterval       time.Duration `yaml:"move_interval" json:"move_interval"`
	DigestPause        time.Duration `yaml:"digest_pause" json:"digest_pause"`
	SettleDelay        time.Duration `yaml:"settle_delay" json:"settle_delay"`
}

func DefaultTuning() Tuning {
	return Tuning{
		ProximityThreshold: DefaultProximityThreshold,
		SatiationCap:       DefaultSatiationCap,
		AreaSize:           DefaultAreaSize,
		MoveInterval:       DefaultMoveInterval,
		DigestPause:        DefaultDigestPause,
		SettleDelay:        DefaultSettleDelay,
	}
}

// Normalized fills non-positive fields from DefaultTuning. A zero SettleDelay
// is kept so tests can start the mover without waiting.
func (t Tuning) Normalized() Tuning {
	def := DefaultTuning()
	if t.ProximityThreshold <= 0 {
		t.ProximityThreshold = def.ProximityThreshold
	}
	if t.SatiationCap <= 0 {
		t.SatiationCap = def.SatiationCap
	}
	if t.AreaSize <= 0 {
		t.AreaSize = def.AreaSize
	}
	if t.MoveInterval <= 0 {
		t.MoveInterval = def.MoveInterval
	}
	if t.DigestPause <= 0 {
		t.DigestPause = def.DigestPause
	}
	if t.SettleDelay < 0 {
		t.SettleDelay = 0
	}
	return t
}
