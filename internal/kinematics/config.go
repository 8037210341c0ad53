package kinematics

// Config is the analysis configuration handed in by the out-of-scope loading
// collaborator. The schema mirrors the JSON config file one-to-one so the
// same struct can be unmarshalled directly. Shape and type validation happen
// upstream; this core only consumes it. Cutoff fields are pointers so that
// fields omitted from the JSON fall back to the canonical defaults via the
// Get* accessors.
type Config struct {
	Points             PointGroups     `json:"points"`
	VideoParameters    VideoParameters `json:"video_parameters"`
	GraphCutoffs       GraphCutoffs    `json:"graph_cutoffs"`
	AutoFindTimeRanges bool            `json:"auto_find_time_ranges"`
	TimeRanges         [][]int         `json:"time_ranges,omitempty"`
}

// PointGroups names the landmarks per anatomical group. The spine is ordered
// head to tail tip; the fin lists are ordered base to tip.
type PointGroups struct {
	Spine    []string   `json:"spine"`
	LeftFin  []string   `json:"left_fin"`
	RightFin []string   `json:"right_fin"`
	Tail     []string   `json:"tail"`
	Head     HeadPoints `json:"head"`
}

// HeadPoints designates the two landmarks whose line is the per-frame
// centerline.
type HeadPoints struct {
	Pt1 string `json:"pt1"`
	Pt2 string `json:"pt2"`
}

// VideoParameters carries the recording geometry used to derive the run's
// pixel-to-metre scale factor and the frame rate used by time-based
// summaries.
type VideoParameters struct {
	PixelScaleFactor  *float64 `json:"pixel_scale_factor,omitempty"`
	DishDiameterM     *float64 `json:"dish_diameter_m,omitempty"`
	PixelDiameter     *float64 `json:"pixel_diameter,omitempty"`
	RecordedFramerate *float64 `json:"recorded_framerate,omitempty"`
}

// GraphCutoffs holds the thresholds and window parameters for peak detection
// and bout segmentation.
type GraphCutoffs struct {
	LeftFinAngle         *float64 `json:"left_fin_angle,omitempty"`
	RightFinAngle        *float64 `json:"right_fin_angle,omitempty"`
	TailAngle            *float64 `json:"tail_angle,omitempty"`
	MovementBoutWidth    *int     `json:"movement_bout_width,omitempty"`
	SwimBoutBuffer       *int     `json:"swim_bout_buffer,omitempty"`
	SwimBoutRightShift   *int     `json:"swim_bout_right_shift,omitempty"`
	PeakHorizontalBuffer *int     `json:"peak_horizontal_buffer,omitempty"`
	UseTailAngle         *bool    `json:"use_tail_angle,omitempty"`
	MinConfidence        *float64 `json:"min_accepted_confidence,omitempty"`
	MaxBrokenPoints      *int     `json:"accepted_broken_points,omitempty"`
}

// GetPixelScaleFactor returns the pixel_scale_factor value or the default.
func (v *VideoParameters) GetPixelScaleFactor() float64 {
	if v.PixelScaleFactor == nil {
		return 1.825
	}
	return *v.PixelScaleFactor
}

// GetDishDiameterM returns the dish_diameter_m value or the default.
func (v *VideoParameters) GetDishDiameterM() float64 {
	if v.DishDiameterM == nil {
		return 0.02
	}
	return *v.DishDiameterM
}

// GetPixelDiameter returns the pixel_diameter value or the default.
func (v *VideoParameters) GetPixelDiameter() float64 {
	if v.PixelDiameter == nil {
		return 1450
	}
	return *v.PixelDiameter
}

// GetRecordedFramerate returns the recorded_framerate value or the default.
func (v *VideoParameters) GetRecordedFramerate() float64 {
	if v.RecordedFramerate == nil {
		return 648
	}
	return *v.RecordedFramerate
}

// GetLeftFinAngle returns the left fin angle cutoff in degrees or the default.
func (c *GraphCutoffs) GetLeftFinAngle() float64 {
	if c.LeftFinAngle == nil {
		return 50
	}
	return *c.LeftFinAngle
}

// GetRightFinAngle returns the right fin angle cutoff in degrees or the default.
func (c *GraphCutoffs) GetRightFinAngle() float64 {
	if c.RightFinAngle == nil {
		return 50
	}
	return *c.RightFinAngle
}

// GetTailAngle returns the tail deflection cutoff or the default. Despite the
// legacy field name this threshold is applied to the scaled tail distance.
func (c *GraphCutoffs) GetTailAngle() float64 {
	if c.TailAngle == nil {
		return 25
	}
	return *c.TailAngle
}

// GetMovementBoutWidth returns the bout gap cutoff in frames or the default.
func (c *GraphCutoffs) GetMovementBoutWidth() int {
	if c.MovementBoutWidth == nil {
		return 50
	}
	return *c.MovementBoutWidth
}

// GetSwimBoutBuffer returns the bout boundary padding in frames or the default.
func (c *GraphCutoffs) GetSwimBoutBuffer() int {
	if c.SwimBoutBuffer == nil {
		return 26
	}
	return *c.SwimBoutBuffer
}

// GetSwimBoutRightShift returns the bout boundary shift in frames or the default.
func (c *GraphCutoffs) GetSwimBoutRightShift() int {
	if c.SwimBoutRightShift == nil {
		return 13
	}
	return *c.SwimBoutRightShift
}

// GetPeakHorizontalBuffer returns the window half-width for the fin peak
// detector or the default.
func (c *GraphCutoffs) GetPeakHorizontalBuffer() int {
	if c.PeakHorizontalBuffer == nil {
		return 5
	}
	return *c.PeakHorizontalBuffer
}

// GetUseTailAngle reports whether bout detection requires the tail signal in
// addition to both fins.
func (c *GraphCutoffs) GetUseTailAngle() bool {
	if c.UseTailAngle == nil {
		return false
	}
	return *c.UseTailAngle
}

// GetMinConfidence returns the per-landmark confidence floor or the default.
func (c *GraphCutoffs) GetMinConfidence() float64 {
	if c.MinConfidence == nil {
		return 0.3
	}
	return *c.MinConfidence
}

// GetMaxBrokenPoints returns how many low-confidence spine landmarks a frame
// may carry before it is considered broken, or the default.
func (c *GraphCutoffs) GetMaxBrokenPoints() int {
	if c.MaxBrokenPoints == nil {
		return 1
	}
	return *c.MaxBrokenPoints
}
