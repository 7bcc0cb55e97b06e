package mandel

// escapeRadiusSq is the squared escape radius. Not tunable.
const escapeRadiusSq = 4.0

// Evaluator returns the escape count of c for a given iteration cap.
type Evaluator func(cRe, cIm float64, maxIter int) int

// Evaluate runs the escape-time test for c = cRe + i*cIm.
//
// The orbit starts at z0 = 0. Its first step always lands on c, so the loop
// begins there and the first magnitude check is made on c itself. The result
// is in [0, maxIter]; maxIter means the orbit stayed bounded.
func Evaluate(cRe, cIm float64, maxIter int) int {
	if maxIter <= 0 {
		return 0
	}
	zRe, zIm := cRe, cIm
	for n := 0; n < maxIter; n++ {
		reSq := zRe * zRe
		imSq := zIm * zIm
		if reSq+imSq > escapeRadiusSq {
			return n
		}
		zIm = 2*zRe*zIm + cIm
		zRe = reSq - imSq + cRe
	}
	return maxIter
}

// EvaluateFromOrigin is Evaluate counting the trivial first step from z = 0.
// Escaping points report one more iteration than Evaluate, capped at maxIter.
func EvaluateFromOrigin(cRe, cIm float64, maxIter int) int {
	if maxIter <= 0 {
		return 0
	}
	var zRe, zIm, reSq, imSq float64
	n := 0
	for n < maxIter && reSq+imSq <= escapeRadiusSq {
		zIm = 2*zRe*zIm + cIm
		zRe = reSq - imSq + cRe
		n++
		reSq = zRe * zRe
		imSq = zIm * zIm
	}
	return n
}
