package calibration

// Approximate mapping from Zipf threshold to population percentile.
// Lower threshold = knows rarer words = larger vocabulary = higher percentile.
//
// Anchors derived from Brysbaert et al. (2016), "How Many Words Do We Know?"
// (vocabulary sizes for 20-year-old native English speakers: 5th pctile
// 27,100 lemmas, 50th 42,000, 95th 51,700) matched against word counts per
// Zipf level (van Heuven et al., 2014) in the top 80k English words.
// Intermediate anchors are interpolated, extremes extrapolated. The entire
// native-adult range spans only ~0.5 Zipf points, so estimates outside the
// 5th-95th band are rough.
//
// The table is fixed calibration data. Do not edit the values.

type percentileAnchor struct {
	zipf       float64
	percentile float64
}

// percentileAnchors is ordered by descending Zipf score (common → rare).
var percentileAnchors = []percentileAnchor{
	{5.0, 0.5},  // ~1,000 lemmas — far below any native adult norm
	{4.0, 1},    // ~7,000 lemmas — well below adult norms
	{3.5, 2},    // ~15,000 lemmas — below most adults
	{3.05, 5},   // ~27,100 lemmas — Brysbaert 5th percentile (empirical)
	{2.87, 25},  // interpolated between 5th and 50th
	{2.69, 50},  // ~42,000 lemmas — Brysbaert 50th percentile (empirical)
	{2.60, 75},  // interpolated between 50th and 95th
	{2.52, 95},  // ~51,700 lemmas — Brysbaert 95th percentile (empirical)
	{2.3, 98},   // extrapolated
	{2.0, 99},   // ~80,000+ lemmas
	{1.5, 99.5}, // extreme vocabulary
}

// ThresholdToPercentile converts a Zipf threshold to an approximate
// population percentile. Values outside the anchor range clamp to the
// nearest endpoint.
func ThresholdToPercentile(threshold float64) float64 {
	if threshold >= percentileAnchors[0].zipf {
		return percentileAnchors[0].percentile
	}
	if threshold <= percentileAnchors[len(percentileAnchors)-1].zipf {
		return percentileAnchors[len(percentileAnchors)-1].percentile
	}
	for i := 0; i < len(percentileAnchors)-1; i++ {
		z1, p1 := percentileAnchors[i].zipf, percentileAnchors[i].percentile
		z2, p2 := percentileAnchors[i+1].zipf, percentileAnchors[i+1].percentile
		if z2 <= threshold && threshold <= z1 {
			t := (z1 - threshold) / (z1 - z2)
			return p1 + t*(p2-p1)
		}
	}
	return 50
}
