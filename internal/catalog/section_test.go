package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWarranty_Fixture(t *testing.T) {
	got := ExtractWarranty(loadFixture(t))
	assert.Equal(t, "WARRANTY INFORMATION:\n"+
		"- 7 days warranty on all electrical parts\n"+
		"- 30 days warranty on engine labor\n"+
		"- No warranty on consumables like oil", got)
	assert.True(t, Found(got))
}

func TestExtractFAQ_Fixture(t *testing.T) {
	got := ExtractFAQ(loadFixture(t))
	assert.True(t, strings.HasPrefix(got, "FREQUENTLY ASKED QUESTIONS:\n"))
	assert.Contains(t, got, "Q: Do you deliver?")
	assert.NotContains(t, got, "Location:")
}

func TestExtractContact_SkipsTechnicalLines(t *testing.T) {
	got := ExtractContact(loadFixture(t))
	assert.Equal(t, "CONTACT INFORMATION:\n"+
		"Location: Lipa City, Batangas\n"+
		"Phone: 09171234567\n"+
		"Email: pomworkz@gmail.com\n"+
		"Hours: Monday to Saturday, 8:00 AM - 5:00 PM", got)
}

func TestExtractSection_NotFound(t *testing.T) {
	got := ExtractWarranty("Camshaft - ₱1700")
	assert.Equal(t, NotFound("Warranty"), got)
	assert.False(t, Found(got))
	assert.False(t, Found(""))
}

func TestExtractSection_LabelledStartLineKept(t *testing.T) {
	text := "Warranty: 30 days on all parts\n- Keep your receipt\n\n- unrelated dash line"
	got := ExtractWarranty(text)
	assert.Equal(t, "WARRANTY INFORMATION:\nWarranty: 30 days on all parts\n- Keep your receipt", got)
}

func TestExtractSection_PDFStyleHeadings(t *testing.T) {
	// Text recovered from the PDF loses the === delimiters.
	text := strings.Join([]string{
		"FREQUENTLY ASKED QUESTIONS",
		"Q: Open on Sundays?",
		"A: No.",
		"CONTACT INFORMATION",
		"Phone: 09171234567",
	}, "\n")

	faq := ExtractFAQ(text)
	assert.Equal(t, "FREQUENTLY ASKED QUESTIONS:\nQ: Open on Sundays?\nA: No.", faq)

	contact := ExtractContact(text)
	assert.Equal(t, "CONTACT INFORMATION:\nPhone: 09171234567", contact)
}

func TestExtractSection_DedupIsCaseInsensitive(t *testing.T) {
	text := "=== FAQ ===\nQ: Do you deliver?\nq: do you DELIVER?\nA: Yes."
	got := ExtractFAQ(text)
	assert.Equal(t, "FREQUENTLY ASKED QUESTIONS:\nQ: Do you deliver?\nA: Yes.", got)
}
