package shell

import (
	"embed"
	"fmt"
)

//go:embed helptext
var helptext embed.FS

func usage(mode string) (*Response, error) {
	dat, err := helptext.ReadFile("helptext/usage-" + mode + ".txt")
	if err != nil {
		return nil, fmt.Errorf("loading helptext: %w", err)
	}
	return msg(string(dat)), nil
}

func usageTopic(topic string) (*Response, error) {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return nil, fmt.Errorf("there is no help text for the topic %s", topic)
	}
	return msg(string(dat)), nil
}
