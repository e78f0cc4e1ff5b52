package types

type Sentiment string

const (
	Positive  Sentiment = "positive"
	Negative  Sentiment = "negative"
	Neutral   Sentiment = "neutral"
	Surprise  Sentiment = "surprise"
	Confused  Sentiment = "confused"
	Love      Sentiment = "love"
	Fear      Sentiment = "fear"
	Disgust   Sentiment = "disgust"
	Skeptical Sentiment = "skeptical"
	Tired     Sentiment = "tired"
	Sick      Sentiment = "sick"
	Dizzy     Sentiment = "dizzy"
	Woozy     Sentiment = "woozy"
	Playful   Sentiment = "playful"
)

type QuestionTag string

const (
	Question  QuestionTag = "Question"
	Statement QuestionTag = "Statement"
)

// Annotation is everything the annotator derives for one message.
type Annotation struct {
	Sentiment      Sentiment          `json:"sentiment"`
	Classification map[string]float64 `json:"classification"`
	Question       QuestionTag        `json:"question"`
}

// AnnotatedMessage is the serialized unit of the analyze stage.
type AnnotatedMessage struct {
	Message
	Annotation
}
