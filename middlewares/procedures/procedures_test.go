package procedures

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	mw "github.com/MJBeltran13/ai-chatbot-shop/internal/middleware"
)

func TestProcedures(t *testing.T) {
	tests := []struct {
		name    string
		p       Procedure
		query   string
		tagalog bool
		want    string
	}{
		{"booking en", Booking, "how do i book an appointment", false, "How to book a service"},
		{"booking tl", Booking, "paano magpa-book po", true, "Paano magpa-book"},
		{"ordering en", Ordering, "how can i place an order", false, "How to order parts"},
		{"ordering tl", Ordering, "pwede ba umorder", true, "Paano umorder"},
		{"workflow en", Workflow, "what is your repair process", false, "Our service process"},
		{"workflow tl", Workflow, "gaano katagal ang repair", true, "Ang proseso"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &mw.Event{Name: mw.EventBeforeLLMRequest, UserText: tt.query, Query: tt.query, Tagalog: tt.tagalog}
			dec, err := tt.p.OnEvent(context.Background(), ev)
			assert.NoError(t, err)
			if assert.True(t, dec.Cancel) {
				assert.True(t, strings.HasPrefix(*dec.ReplaceText, tt.want), *dec.ReplaceText)
				assert.Contains(t, *dec.ReplaceText, "\n1. ")
			}
		})
	}
}

func TestProcedures_Pass(t *testing.T) {
	ev := &mw.Event{Name: mw.EventBeforeLLMRequest, UserText: "hello", Query: "hello"}
	for _, p := range All() {
		dec, _ := p.OnEvent(context.Background(), ev)
		assert.False(t, dec.Cancel, p.ID())
	}
}

func TestProcedures_PriorityOrder(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].Priority(), all[i].Priority())
	}
	assert.Equal(t, Booking.Text(true), Booking.tl)
}
