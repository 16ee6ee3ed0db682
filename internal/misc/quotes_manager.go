package misc

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	log "github.com/sirupsen/logrus"
)

//go:embed quotes.csv
var defaultQuotesCsv string

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Topic  string `json:"topic"`
}

type QuotesManager struct {
	Quotes       []*Quote
	TopicsQuotes map[string][]*Quote
}

// NewDefaultQuoteManager loads the motivational quotes shipped with the binary.
func NewDefaultQuoteManager() (*QuotesManager, error) {
	return NewQuoteManager(csv.NewReader(strings.NewReader(defaultQuotesCsv)))
}

func NewQuoteManager(quotesCsvReader *csv.Reader) (*QuotesManager, error) {
	qm := &QuotesManager{
		TopicsQuotes: make(map[string][]*Quote),
	}

	quotesCsvReader.Comma = ';'
	for {
		record, err := quotesCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// QUOTE;AUTHOR;TOPIC
		if len(record) != 3 {
			return nil, fmt.Errorf("record [%s] does not have 3 elements", record)
		}

		quote := &Quote{
			Text:   record[0],
			Author: record[1],
			Topic:  record[2],
		}
		qm.Quotes = append(qm.Quotes, quote)
		qm.TopicsQuotes[quote.Topic] = append(qm.TopicsQuotes[quote.Topic], quote)
	}

	if len(qm.Quotes) == 0 {
		return nil, errors.New("no quotes found")
	}

	log.Debugf("quotes CSV read %d quotes", len(qm.Quotes))

	return qm, nil
}

// RandomQuote picks a quote, from the given topic if it has any.
func (qm *QuotesManager) RandomQuote(topic string) *Quote {
	quotes := qm.Quotes
	if topicQuotes, ok := qm.TopicsQuotes[topic]; ok {
		quotes = topicQuotes
	}
	return quotes[rand.Intn(len(quotes))]
}
