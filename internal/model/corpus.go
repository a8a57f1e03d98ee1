package model

type sample struct {
	text  string
	class int
}

var corpus = []sample{
	{"I love this product", ClassPositive},
	{"This is amazing", ClassPositive},
	{"Great experience", ClassPositive},
	{"Excellent service", ClassPositive},
	{"Very good quality", ClassPositive},
	{"Highly recommend", ClassPositive},
	{"Terrible product", ClassNegative},
	{"Very disappointed", ClassNegative},
	{"Waste of money", ClassNegative},
	{"Poor quality", ClassNegative},
	{"Not recommended", ClassNegative},
	{"Bad experience", ClassNegative},
}

// Corpus returns the built-in training texts and their class labels.
func Corpus() ([]string, []int) {
	texts := make([]string, len(corpus))
	labels := make([]int, len(corpus))
	for i, s := range corpus {
		texts[i] = s.text
		labels[i] = s.class
	}
	return texts, labels
}
