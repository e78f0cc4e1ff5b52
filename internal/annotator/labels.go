package annotator

// CandidateLabels is the curated zero-shot label set, in the order sent to the classifier.
var CandidateLabels = []string{
	"Informative", "Casual", "Sarcasm", "Happy", "Excited", "Amused", "Joyful", "Proud",
	"Content", "Grateful", "Relieved", "Hopeful", "Inspired", "Amazed", "Surprised",
	"Confused", "Curious", "Indifferent", "Bored", "Tired", "Annoyed", "Angry", "Frustrated",
	"Disappointed", "Worried", "Anxious", "Scared", "Sad", "Heartbroken", "Grieving",
	"Shocked", "Disgusted", "Distrustful", "Skeptical", "Jealous", "Embarrassed",
	"Guilty", "Ashamed", "Nostalgic", "Sentimental", "Melancholic", "Lonely", "Overwhelmed",
	"Playful", "Teasing", "Mischievous", "Bantering", "Whimsical", "Ironic", "Witty",
	"Sardonic", "Jocular", "Tongue-in-cheek", "Silly", "Mock-serious", "Sarcastic",
	"Affectionate", "Complimentary", "Encouraging", "Empathetic", "Caring", "Sympathetic",
	"Reflective", "Meditative", "Philosophical", "Mystified",
}
