package report

import (
	"encoding/xml"
	"fmt"
	"io"
)

// XML STRUCTURE:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<cart source="cart.csv" currency="USD">
//	  <item n="1" name="Mollis consequat" price="9.00" quantity="2" subtotal="18.00"></item>
//	  <total>18.00</total>
//	</cart>

type xmlCart struct {
	XMLName  xml.Name  `xml:"cart"`
	Source   string    `xml:"source,attr"`
	Currency string    `xml:"currency,attr,omitempty"`
	Items    []xmlItem `xml:"item"`
	Total    string    `xml:"total"`
}

type xmlItem struct {
	N        int    `xml:"n,attr"`
	Name     string `xml:"name,attr"`
	Price    string `xml:"price,attr"`
	Quantity int    `xml:"quantity,attr"`
	Subtotal string `xml:"subtotal,attr"`
}

// WriteXML writes the cart as an indented XML document.
// Item numbering starts at 1.
func WriteXML(w io.Writer, s Summary) error {
	doc := xmlCart{
		Source:   s.Source,
		Currency: s.Currency,
		Items:    make([]xmlItem, len(s.Cart.Items)),
		Total:    s.money(s.Cart.Total),
	}
	for i, item := range s.Cart.Items {
		doc.Items[i] = xmlItem{
			N:        i + 1,
			Name:     item.Name,
			Price:    s.money(item.Price),
			Quantity: item.Quantity,
			Subtotal: s.money(item.Subtotal()),
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal XML: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}
