package predict

import (
	"fmt"
	"strings"

	"diabetescheck/ml"
)

// Kind tells which variant of Result is populated.
type Kind int

const (
	// KindOutcome carries a classifier decision.
	KindOutcome Kind = iota
	// KindWarning means the submission was rejected before inference.
	KindWarning
	// KindFailure means feature assembly or inference failed; Err is set.
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindOutcome:
		return "ok"
	case KindWarning:
		return "warning"
	case KindFailure:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the user-facing reading of a label.
type Outcome int

const (
	NonDiabetic Outcome = iota
	Diabetic
)

func (o Outcome) String() string {
	if o == Diabetic {
		return "diabetic"
	}
	return "non_diabetic"
}

// Suggestion is one bullet of the prevention advice. URL is empty for plain text.
type Suggestion struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

const (
	WarningEmptyName  = "Please enter your name."
	PreventionHeading = "Suggestions for diabetes prevention:"
	ReadMoreURL       = "https://www.mayoclinic.org/diseases-conditions/type-2-diabetes/in-depth/diabetes-prevention/art-20047639"
)

// PreventionSuggestions is shown with every Diabetic outcome.
var PreventionSuggestions = []Suggestion{
	{Text: "Maintain a healthy weight"},
	{Text: "Exercise regularly"},
	{Text: "Eat a balanced diet"},
	{Text: "Read more", URL: ReadMoreURL},
}

// Result is what a single submission produces.
type Result struct {
	Kind    Kind
	Outcome Outcome
	Label   ml.Label
	Name    string
	Vector  ml.FeatureVector
	Message string
	Advice  []Suggestion
	Err     error
}

// OK reports whether the classifier produced a decision.
func (r Result) OK() bool {
	return r.Kind == KindOutcome
}

// AdviceMarkdown renders the advice block, or "" when there is none.
func (r Result) AdviceMarkdown() string {
	if len(r.Advice) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", PreventionHeading)
	for _, s := range r.Advice {
		if s.URL != "" {
			fmt.Fprintf(&b, "- [%s](%s)\n", s.Text, s.URL)
		} else {
			fmt.Fprintf(&b, "- %s\n", s.Text)
		}
	}
	return b.String()
}

func nonDiabeticMessage(name string) string {
	return fmt.Sprintf("Congratulations, %s! You are not diabetic.", name)
}

func diabeticMessage(name string) string {
	return fmt.Sprintf("%s, unfortunately, you might be diabetic. Please consult a healthcare professional.", name)
}

func failureMessage(err error) string {
	return fmt.Sprintf("An error occurred during prediction: %v", err)
}

func warning(msg string) Result {
	return Result{Kind: KindWarning, Message: msg}
}

func failure(name string, vector ml.FeatureVector, err error) Result {
	return Result{Kind: KindFailure, Name: name, Vector: vector, Message: failureMessage(err), Err: err}
}

func outcome(name string, vector ml.FeatureVector, label ml.Label) Result {
	r := Result{Kind: KindOutcome, Name: name, Vector: vector, Label: label}
	if label == ml.LabelDiabetic {
		r.Outcome = Diabetic
		r.Message = diabeticMessage(name)
		r.Advice = append([]Suggestion(nil), PreventionSuggestions...)
		return r
	}
	r.Outcome = NonDiabetic
	r.Message = nonDiabeticMessage(name)
	return r
}
