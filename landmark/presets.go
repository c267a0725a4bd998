package landmark

// Landmark index presets for estimating head motion from features that stay
// put across facial expressions. Indices follow the MediaPipe Face Landmarker
// topology (478 landmarks).

// NoseLandmarks are the nose-bridge and nose-flank landmarks, stable across
// expressions.
var NoseLandmarks = []int{
	122, 196, 3, 51, 45, 44, 417, 351, 419, 248, 281, 275,
	274, 412, 399, 456, 363, 440, 128, 114, 217, 198, 131, 115,
}

// ForeheadLandmarks move the least of all landmarks.
var ForeheadLandmarks = []int{109, 10, 338, 108, 151, 357}

// StableLandmarks is the combined expression-invariant preset used to
// estimate alignment while still transforming the full landmark set.
var StableLandmarks = append(append([]int{}, NoseLandmarks...), ForeheadLandmarks...)

// AnatomicMidpointPairs lists landmark pairs whose midpoints (the inner eye
// corners' centers) augment the nose landmarks in anatomic alignment.
var AnatomicMidpointPairs = [][2]int{{33, 133}, {362, 263}}
