// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package david

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	soapEnvNS  = "http://schemas.xmlsoap.org/soap/envelope/"
	serviceNS  = "http://service.session.sample"
	soapAction = "urn:"
)

// The service is an Axis2 endpoint: every operation takes positional
// arguments named args0, args1, ... and answers with one or more
// <return> elements.

type requestEnvelope struct {
	XMLName xml.Name    `xml:"soapenv:Envelope"`
	EnvNS   string      `xml:"xmlns:soapenv,attr"`
	SvcNS   string      `xml:"xmlns:ns,attr"`
	Body    requestBody `xml:"soapenv:Body"`
}

type requestBody struct {
	Op operation
}

type operation struct {
	XMLName xml.Name
	Args    []argument
}

type argument struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// encodeRequest builds the SOAP envelope for op with positional args.
func encodeRequest(op string, args ...string) ([]byte, error) {
	env := requestEnvelope{
		EnvNS: soapEnvNS,
		SvcNS: serviceNS,
		Body: requestBody{Op: operation{
			XMLName: xml.Name{Local: "ns:" + op},
		}},
	}
	for i, a := range args {
		env.Body.Op.Args = append(env.Body.Op.Args, argument{
			XMLName: xml.Name{Local: fmt.Sprintf("ns:args%d", i)},
			Value:   a,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", op, err)
	}
	return buf.Bytes(), nil
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail string `xml:"detail"`
}

func (f *soapFault) message() string {
	msg := strings.TrimSpace(f.String)
	if msg == "" {
		msg = strings.TrimSpace(f.Code)
	}
	if msg == "" {
		msg = "unspecified fault"
	}
	return msg
}

type responseEnvelope[T any] struct {
	Body struct {
		Fault    *soapFault `xml:"Fault"`
		Response struct {
			Returns []T `xml:"return"`
		} `xml:",any"`
	} `xml:"Body"`
}

// decodeResponse parses a SOAP response into its <return> elements and
// any fault the service reported.
func decodeResponse[T any](data []byte) ([]T, *soapFault, error) {
	var env responseEnvelope[T]
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("parsing SOAP response: %w", err)
	}
	if env.Body.Fault != nil {
		return nil, env.Body.Fault, nil
	}
	return env.Body.Response.Returns, nil, nil
}

// field is a child element captured by name, for service objects whose
// layout we pass through rather than model.
type field struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func fieldMap(fields []field) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.XMLName.Local] = strings.TrimSpace(f.Value)
	}
	return m
}
