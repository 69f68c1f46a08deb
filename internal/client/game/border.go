package game

// WorldBorder mirrors the server's border geometry and warning settings.
type WorldBorder struct {
	CenterX, CenterZ float64
	Diameter         float64
	OldDiameter      float64
	NewDiameter      float64
	Speed            int64
	PortalBoundary   int32
	WarningBlocks    int32
	WarningTime      int32
}
