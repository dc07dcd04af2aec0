package movement

import "math"

// Speeds, gravity and impulses are per reference frame; Step scales them by
// the elapsed time relative to FrameRate.
type Params struct {
	FrameRate       float64 `json:"frame_rate" yaml:"frame_rate"`
	MaxFrames       float64 `json:"max_frames" yaml:"max_frames"`
	Speed           float64 `json:"speed" yaml:"speed"`
	Gravity         float64 `json:"gravity" yaml:"gravity"`
	JumpImpulse     float64 `json:"jump_impulse" yaml:"jump_impulse"`
	StepThreshold   float64 `json:"step_threshold" yaml:"step_threshold"`
	Radius          float64 `json:"radius" yaml:"radius"`
	EyeHeight       float64 `json:"eye_height" yaml:"eye_height"`
	LookHeight      float64 `json:"look_height" yaml:"look_height"`
	StrideLength    float64 `json:"stride_length" yaml:"stride_length"`
	CameraDistance  float64 `json:"camera_distance" yaml:"camera_distance"`
	CameraMinDist   float64 `json:"camera_min_distance" yaml:"camera_min_distance"`
	CameraMaxDist   float64 `json:"camera_max_distance" yaml:"camera_max_distance"`
	CameraSearchMax int     `json:"camera_search_steps" yaml:"camera_search_steps"`
}

func DefaultParams() Params {
	return Params{
		FrameRate:       60,
		MaxFrames:       3,
		Speed:           0.15,
		Gravity:         0.015,
		JumpImpulse:     0.35,
		StepThreshold:   0.3,
		Radius:          0.5,
		EyeHeight:       1.6,
		LookHeight:      1.2,
		StrideLength:    1.4,
		CameraDistance:  6,
		CameraMinDist:   1,
		CameraMaxDist:   20,
		CameraSearchMax: 5,
	}
}

// Sanitize replaces unusable values with defaults.
func (p Params) Sanitize() Params {
	def := DefaultParams()
	fix := func(v *float64, fallback float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			*v = fallback
		}
	}
	fix(&p.FrameRate, def.FrameRate)
	fix(&p.MaxFrames, def.MaxFrames)
	fix(&p.Speed, def.Speed)
	fix(&p.Gravity, def.Gravity)
	fix(&p.JumpImpulse, def.JumpImpulse)
	fix(&p.StepThreshold, def.StepThreshold)
	fix(&p.Radius, def.Radius)
	fix(&p.EyeHeight, def.EyeHeight)
	fix(&p.LookHeight, def.LookHeight)
	fix(&p.StrideLength, def.StrideLength)
	fix(&p.CameraDistance, def.CameraDistance)
	fix(&p.CameraMinDist, def.CameraMinDist)
	fix(&p.CameraMaxDist, def.CameraMaxDist)
	if p.CameraMaxDist < p.CameraMinDist {
		p.CameraMaxDist = p.CameraMinDist
	}
	if p.CameraSearchMax <= 0 || p.CameraSearchMax > def.CameraSearchMax {
		p.CameraSearchMax = def.CameraSearchMax
	}
	return p
}
