package collision

const (
	StreetHalfWidth   = 80.0
	StreetHalfLength  = 120.0
	BoulevardHalf     = 10.0
	SidewalkOuter     = 14.0
	CrossStreetZ      = 40.0
	CrossStreetHalf   = 6.0
	FountainRadius    = 4.6
	FountainHeight    = 0.82
	KerbHeight        = 0.4
	BenchHeight       = 0.7
	MirrorDeckHeight  = 1.5
	lampPostSpacing   = 20.0
	lampPostRadius    = 0.15
	lampPostHeight    = 5.0
	statueRadius      = 0.8
	statueHeight      = 3.0
	mirrorDeckRadius  = 3.0
	benchHalfLength   = 1.0
	benchHalfDepth    = 0.3
	benchOffsetX      = 8.0
	benchOffsetZ      = 20.0
	mirrorDeckOffsetZ = 60.0
)

// StreetBounds is the playable area of the default street.
func StreetBounds() Bounds {
	return Bounds{MinX: -StreetHalfWidth, MaxX: StreetHalfWidth, MinZ: -StreetHalfLength, MaxZ: StreetHalfLength}
}

// StreetLayout is the boulevard running along Z with two cross streets, a
// fountain plaza at the origin and mirror-only decks.
func StreetLayout() *Model {
	colliders := make([]Collider, 0, 64)

	blocks := [][2]float64{
		{-StreetHalfLength, -CrossStreetZ - CrossStreetHalf},
		{-CrossStreetZ + CrossStreetHalf, CrossStreetZ - CrossStreetHalf},
		{CrossStreetZ + CrossStreetHalf, StreetHalfLength},
	}
	for _, side := range []float64{-1, 1} {
		for _, b := range blocks {
			box := Box{MinZ: b[0], MaxZ: b[1]}
			if side > 0 {
				box.MinX, box.MaxX = SidewalkOuter, StreetHalfWidth
			} else {
				box.MinX, box.MaxX = -StreetHalfWidth, -SidewalkOuter
			}
			colliders = append(colliders, box)
		}

		kerb := Rect{MinZ: -StreetHalfLength, MaxZ: StreetHalfLength}
		if side > 0 {
			kerb.MinX, kerb.MaxX = BoulevardHalf, SidewalkOuter
		} else {
			kerb.MinX, kerb.MaxX = -SidewalkOuter, -BoulevardHalf
		}
		colliders = append(colliders, Surface{Footprint: kerb, Height: KerbHeight})

		for z := -StreetHalfLength + lampPostSpacing; z < StreetHalfLength; z += lampPostSpacing {
			colliders = append(colliders, Cylinder{X: side * (BoulevardHalf + 0.5), Z: z, Radius: lampPostRadius, Height: lampPostHeight})
		}

		for _, dz := range []float64{-benchOffsetZ, benchOffsetZ} {
			colliders = append(colliders, Surface{
				Footprint: Rect{
					MinX: side*benchOffsetX - benchHalfDepth,
					MaxX: side*benchOffsetX + benchHalfDepth,
					MinZ: dz - benchHalfLength,
					MaxZ: dz + benchHalfLength,
				},
				Height:       BenchHeight,
				RequiresJump: true,
			})
		}

		colliders = append(colliders, Surface{
			Footprint:    Circle{X: 0, Z: side * mirrorDeckOffsetZ, Radius: mirrorDeckRadius},
			Height:       MirrorDeckHeight,
			RequiresJump: true,
			AltModeOnly:  true,
		})
	}

	colliders = append(colliders,
		Surface{Footprint: Circle{X: 0, Z: 0, Radius: FountainRadius}, Height: FountainHeight, RequiresJump: true},
		Cylinder{X: 0, Z: 0, Radius: statueRadius, Height: statueHeight},
	)

	return NewModel(StreetBounds(), colliders...)
}
