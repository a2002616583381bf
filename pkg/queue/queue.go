// Package queue serializes image generation requests so only one renders
// at a time, regardless of how many campaigns are in flight.
package queue

import "io"

// Request describes one text-to-image generation.
type Request struct {
	Prompt   string
	CfgScale float64
	Steps    int
	Width    int
	Height   int
	Samples  int
}

// Queue accepts generation requests and answers each on its own channels.
type Queue interface {
	Start()
	Stop()
	Add(req *Request) (chan []io.Reader, chan error, error)
}
