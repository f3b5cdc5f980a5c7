package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Gunvolt24/semfilms/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// CLI-приложение для валидации запросов на прогрев кэша; с -brokers валидные запросы публикуются в Kafka.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	brokers := flag.String("brokers", "", "comma-separated Kafka brokers; if set, valid requests are published instead of printed")
	topic := flag.String("topic", "catalog.warmup", "Kafka topic for warm-up requests")
	flag.Parse()

	ctx := context.Background()
	validator := validate.NewWarmUpValidator()

	format := validate.InputFormat(*formatStr)
	path := *inputPath

	// stdin вариант: считаем, что jsonl
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	var out io.Writer = os.Stdout
	var valid bytes.Buffer
	if *brokers != "" {
		out = &valid
	}

	summary, err := validate.ValidateFile(ctx, validator, path, format, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)

	if *brokers == "" {
		return
	}
	n, err := publish(ctx, strings.Split(*brokers, ","), *topic, &valid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "publish: %v (%d published)\n", err, n)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "published %d warm-up requests to %s\n", n, *topic)
}

// publish — каждая непустая строка r отправляется отдельным сообщением.
func publish(ctx context.Context, brokers []string, topic string, r io.Reader) (int, error) {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()

	var msgs []kafka.Message
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		msgs = append(msgs, kafka.Message{Value: append([]byte(nil), line...)})
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("scan: %w", err)
	}
	if len(msgs) == 0 {
		return 0, nil
	}

	wctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := w.WriteMessages(wctx, msgs...); err != nil {
		return 0, fmt.Errorf("write messages: %w", err)
	}
	return len(msgs), nil
}
