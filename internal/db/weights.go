package db

// WeightClass pairs the tsvector weights applied to a question and its
// answer. High-volume questions rank above low-volume ones for the same
// lexical match.
type WeightClass struct {
	Question string
	Answer   string
}

func (w WeightClass) String() string {
	return w.Question + "/" + w.Answer
}

// WeightClassForVolume maps monthly search volume to tsvector weights:
// above 1000 both sides get A, 200 to 1000 gets A/B, below 200 gets B/C.
func WeightClassForVolume(volume int) WeightClass {
	switch {
	case volume > 1000:
		return WeightClass{Question: "A", Answer: "A"}
	case volume >= 200:
		return WeightClass{Question: "A", Answer: "B"}
	default:
		return WeightClass{Question: "B", Answer: "C"}
	}
}
