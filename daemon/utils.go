package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aalemi-dev/stdlib-xray/segment"
)

// Header is the first line of every datagram sent to the daemon.
const Header = `{"format":"json","version":1}`

// Operation names reported to the observer.
const (
	operationSubmit         = "submit"
	operationSubmitFragment = "submit_fragment"
)

// SubmitSegment serializes seg and writes it to the daemon.
//
// When the framed document exceeds MaxPacketSize it is split: the parent is sent
// in progress without subsegments, each subsegment follows as an independent
// subsegment carrying the parent's trace and segment identifiers (split again if
// still too large), and finally the completed parent is sent. Errors of individual
// fragments are joined; fragments that fit are still delivered.
func (c *Client) SubmitSegment(seg *segment.Segment) error {
	if seg == nil {
		return ErrNilSegment
	}

	raw, err := json.Marshal(seg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}

	packet := frame(raw)
	if len(packet) <= c.cfg.MaxPacketSize {
		return c.send(operationSubmit, seg.Name(), seg.ID(), packet)
	}

	// Numbers stay json.Number so fragments carry the exact literals.
	var doc map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	c.logInfo(context.Background(), "segment exceeds max packet size, sending fragments", map[string]interface{}{
		"segment_id": seg.ID(),
		"bytes":      len(packet),
		"limit":      c.cfg.MaxPacketSize,
	})
	return c.submitDocument(doc, operationSubmit)
}

// submitDocument sends doc, fragmenting it when it does not fit in one datagram.
func (c *Client) submitDocument(doc map[string]interface{}, operation string) error {
	name, _ := doc["name"].(string)
	id, _ := doc["id"].(string)

	packet, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if len(packet) <= c.cfg.MaxPacketSize {
		return c.send(operation, name, id, packet)
	}

	children, _ := doc["subsegments"].([]interface{})
	if len(children) == 0 {
		err := fmt.Errorf("%w: segment %s is %d bytes, limit %d", ErrPacketTooLarge, id, len(packet), c.cfg.MaxPacketSize)
		c.observeOperation(operation, name, id, 0, err, int64(len(packet)))
		c.logWarn(context.Background(), "dropping oversized segment", err, map[string]interface{}{
			"segment_id": id,
		})
		return err
	}

	parent := withoutSubsegments(doc)
	_, ended := parent["end_time"]

	inProgress := parent
	if ended {
		inProgress = copyDocument(parent)
		delete(inProgress, "end_time")
	}
	inProgress["in_progress"] = true

	var errs []error
	if err := c.submitDocument(inProgress, operation); err != nil {
		errs = append(errs, err)
	}

	traceID, hasTrace := parent["trace_id"]
	for _, child := range children {
		childDoc, ok := child.(map[string]interface{})
		if !ok {
			continue
		}
		childDoc["type"] = "subsegment"
		childDoc["parent_id"] = id
		if hasTrace {
			childDoc["trace_id"] = traceID
		}
		if err := c.submitDocument(childDoc, operationSubmitFragment); err != nil {
			errs = append(errs, err)
		}
	}

	if ended {
		if err := c.submitDocument(parent, operation); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// send writes one framed datagram and reports it.
func (c *Client) send(operation, name, id string, packet []byte) error {
	start := time.Now()
	err := c.write(packet)
	c.observeOperation(operation, name, id, time.Since(start), err, int64(len(packet)))
	if err != nil && !errors.Is(err, ErrClientClosed) {
		c.logWarn(context.Background(), "failed to send segment to daemon", err, map[string]interface{}{
			"segment_id": id,
			"address":    c.address,
		})
	}
	return err
}

func (c *Client) write(packet []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	if c.cfg.WriteTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}

	if _, err := c.conn.Write(packet); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// frame prefixes a document with the daemon header line.
func frame(body []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(Header) + 1 + len(body))
	buf.WriteString(Header)
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes()
}

func encodeDocument(doc map[string]interface{}) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	return frame(raw), nil
}

func withoutSubsegments(doc map[string]interface{}) map[string]interface{} {
	out := copyDocument(doc)
	delete(out, "subsegments")
	return out
}

func copyDocument(doc map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
