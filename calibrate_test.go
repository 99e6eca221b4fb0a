package postag

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/happyhackingspace/postag/internal/feature"
	"github.com/happyhackingspace/postag/maxent"
)

// generalLabelCutoff tells the general slot's training set apart from the
// domain slot's in calibrationOptions.
const generalLabelCutoff = 99

// constantModel predicts label for every token.
func constantModel(label string) *maxent.Model {
	m := maxent.NewModel()
	m.Labels.Add(label)
	m.NumLabels = 1
	m.Weights = make([]float64, m.NumWeights())
	return m
}

func constantTrainer(label string) Trainer {
	return func(*maxent.TrainingSet) (*maxent.Model, error) {
		return constantModel(label), nil
	}
}

// calibrationOptions trains the domain slot with domain and the general
// slot with general.
func calibrationOptions(t *testing.T, domain, general Trainer) Options {
	t.Helper()
	src := strings.Replace(testDescriptor,
		"document_frequency: 1\n    feature_cutoff: 0\n    label_cutoff: 0",
		"document_frequency: 1\n    feature_cutoff: 0\n    label_cutoff: 99", 1)
	d, err := feature.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	slot, err := d.Slot(SlotGeneral)
	if err != nil {
		t.Fatal(err)
	}
	if slot.LabelCutoff != generalLabelCutoff {
		t.Fatalf("general label cutoff = %d", slot.LabelCutoff)
	}
	return Options{
		Descriptor: d,
		Trainer: func(ts *maxent.TrainingSet) (*maxent.Model, error) {
			if ts.LabelCutoff == generalLabelCutoff {
				return general(ts)
			}
			return domain(ts)
		},
		Workers:     2,
		FoldWorkers: 2,
	}
}

func TestReduceThresholdSingleWin(t *testing.T) {
	// 20 folds; the domain model wins only once, at similarity 0.42
	results := make([]FoldResult, 20)
	for i := range results {
		results[i].Shard = i
	}
	results[13].Similarities = []float64{0.42}

	got, err := ReduceThreshold(results)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.42 {
		t.Errorf("threshold = %v, want 0.42", got)
	}
}

func TestReduceThresholdEmpty(t *testing.T) {
	for _, results := range [][]FoldResult{nil, make([]FoldResult, 5)} {
		if _, err := ReduceThreshold(results); !errors.Is(err, ErrNoDomainAdvantage) {
			t.Errorf("ReduceThreshold(%d empty folds) = %v, want ErrNoDomainAdvantage", len(results), err)
		}
	}
}

func TestReduceThresholdPercentile(t *testing.T) {
	// 30 values: n = round(1.5) = 2, third smallest is 3/30
	var sims []float64
	for i := 30; i >= 1; i-- {
		sims = append(sims, float64(i)/30)
	}
	results := []FoldResult{{Similarities: sims[:10]}, {Similarities: sims[10:]}}
	got, err := ReduceThreshold(results)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.1 {
		t.Errorf("threshold = %v, want 0.1", got)
	}

	results = []FoldResult{{Similarities: []float64{0.1234, 0.9}}}
	if got, _ := ReduceThreshold(results); got != 0.124 {
		t.Errorf("threshold = %v, want 0.124 (rounded up)", got)
	}
}

func TestReduceThresholdBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := range 200 {
		n := 1 + rng.Intn(50)
		sims := make([]float64, n)
		for i := range sims {
			sims[i] = 1e-6 + rng.Float64()*(1-1e-6)
		}
		got, err := ReduceThreshold([]FoldResult{{Similarities: sims}})
		if err != nil {
			t.Fatal(err)
		}
		if got < 0 || got > 1 {
			t.Errorf("trial %d: threshold %v out of [0,1]", trial, got)
		}
		if scaled := got * 1000; math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			t.Errorf("trial %d: threshold %v has more than three decimals", trial, got)
		}
	}
	if got, _ := ReduceThreshold([]FoldResult{{Similarities: []float64{1}}}); got != 1 {
		t.Errorf("threshold for similarity 1 = %v", got)
	}
}

func TestFoldResultAccuracy(t *testing.T) {
	r := FoldResult{Correct: [2]int{6, 3}, Total: 12}
	if r.Accuracy(SlotDomain) != 0.5 || r.Accuracy(SlotGeneral) != 0.25 {
		t.Errorf("accuracy = %v/%v", r.Accuracy(SlotDomain), r.Accuracy(SlotGeneral))
	}
	if (FoldResult{}).Accuracy(SlotDomain) != 0 {
		t.Error("accuracy of an empty fold should be 0")
	}
}

func TestEvaluateFold(t *testing.T) {
	c := writeCorpus(t, testShards)
	opts := testOptions(t)

	r, err := EvaluateFold(context.Background(), c, 1, opts)
	if err != nil {
		t.Fatal(err)
	}
	if r.Shard != 1 || r.Total != 8 {
		t.Errorf("result = %+v, want shard 1 with 8 tokens", r)
	}
	for _, slot := range []int{SlotDomain, SlotGeneral} {
		if r.Correct[slot] < 0 || r.Correct[slot] > r.Total {
			t.Errorf("%s correct = %d of %d", SlotName(slot), r.Correct[slot], r.Total)
		}
	}
	for _, s := range r.Similarities {
		if s <= 0 || s > 1 {
			t.Errorf("similarity %v out of (0,1]", s)
		}
	}

	if _, err := EvaluateFold(context.Background(), c, 3, opts); err == nil {
		t.Error("expected error for shard out of range")
	}
}

func TestEvaluateFoldDomainWins(t *testing.T) {
	c := writeCorpus(t, testShards)
	opts := calibrationOptions(t, NewTrainer(maxent.DefaultTrainerConfig()), constantTrainer("ZZZ"))

	half2, half3 := math.Sqrt(2)/2, math.Sqrt(3)/2
	want := [][]float64{
		{1, half3},     // "sleep" unseen without shard 0
		{1, half3},     // "bark" unseen without shard 1
		{half2, half3}, // "bird", "sing" and "end" unseen without shard 2
	}
	for shard, sims := range want {
		r, err := EvaluateFold(context.Background(), c, shard, opts)
		if err != nil {
			t.Fatal(err)
		}
		if r.Correct[SlotGeneral] != 0 {
			t.Errorf("fold %d: general correct = %d, want 0", shard, r.Correct[SlotGeneral])
		}
		if r.Correct[SlotDomain] <= r.Correct[SlotGeneral] {
			t.Errorf("fold %d: domain correct = %d", shard, r.Correct[SlotDomain])
		}
		if len(r.Similarities) != len(sims) {
			t.Fatalf("fold %d: similarities = %v, want %v", shard, r.Similarities, sims)
		}
		for i := range sims {
			if math.Abs(r.Similarities[i]-sims[i]) > 1e-9 {
				t.Errorf("fold %d: similarities = %v, want %v", shard, r.Similarities, sims)
				break
			}
		}
	}
}

func TestEvaluateFoldExcludesTies(t *testing.T) {
	c := writeCorpus(t, testShards)
	// both models get exactly the "." of every sentence right
	opts := calibrationOptions(t, constantTrainer("PUNCT"), constantTrainer("PUNCT"))

	for shard := range c.Files {
		r, err := EvaluateFold(context.Background(), c, shard, opts)
		if err != nil {
			t.Fatal(err)
		}
		if r.Correct != [2]int{2, 2} || r.Total != 8 {
			t.Errorf("fold %d: correct = %v of %d, want [2 2] of 8", shard, r.Correct, r.Total)
		}
		if len(r.Similarities) != 0 {
			t.Errorf("fold %d: tied sentences recorded: %v", shard, r.Similarities)
		}
	}

	if _, err := CrossValidate(context.Background(), c, opts); !errors.Is(err, ErrNoDomainAdvantage) {
		t.Errorf("CrossValidate = %v, want ErrNoDomainAdvantage", err)
	}
}

func TestCrossValidate(t *testing.T) {
	c := writeCorpus(t, testShards)
	opts := calibrationOptions(t, NewTrainer(maxent.DefaultTrainerConfig()), constantTrainer("ZZZ"))

	// sorted wins: 0.707, 0.866 x3, 1 x2; index round(0.3) = 0
	th, err := CrossValidate(context.Background(), c, opts)
	if err != nil {
		t.Fatal(err)
	}
	if th != 0.708 {
		t.Errorf("threshold = %v, want 0.708", th)
	}
}

func TestCrossValidateCorruptShard(t *testing.T) {
	c := writeCorpus(t, testShards)
	c.Files = append(c.Files, filepath.Join(t.TempDir(), "gone.tsv"))
	if _, err := CrossValidate(context.Background(), c, testOptions(t)); err == nil {
		t.Fatal("a missing shard should abort calibration")
	}
}

func TestTrainValidatesDescriptorFirst(t *testing.T) {
	d, err := feature.Parse([]byte("slots:\n  - id: 1\n    document_frequency: 0\n    feature_cutoff: 0\n    label_cutoff: 0\n    ambiguity_threshold: 0.5\ntemplates:\n  - form[0]\n"))
	if err != nil {
		t.Fatal(err)
	}
	c := writeCorpus(t, testShards)
	c.Files = append(c.Files, filepath.Join(t.TempDir(), "gone.tsv"))

	_, err = Train(context.Background(), c, Options{Descriptor: d}, ModeDynamic, -1)
	if !errors.Is(err, feature.ErrMissingSlot) {
		t.Errorf("Train = %v, want ErrMissingSlot before reading any shard", err)
	}
}
