package strategic

import (
	"os"

	"uno/meta"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// SaveGenome writes the genome as a serialized list of numbers.
func SaveGenome(path string, genome Genome) error {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(genome))}
	for _, w := range genome {
		list.Values = append(list.Values, structpb.NewNumberValue(w))
	}
	data, err := proto.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "failed to marshal genome")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "failed to write genome %s", path)
}

// LoadGenome reads a genome written by SaveGenome.
func LoadGenome(path string) (Genome, error) {
	var genome Genome
	data, err := os.ReadFile(path)
	if err != nil {
		return genome, errors.Wrapf(err, "failed to read genome %s", path)
	}
	list := &structpb.ListValue{}
	if err := proto.Unmarshal(data, list); err != nil {
		return genome, errors.Wrapf(err, "failed to unmarshal genome %s", path)
	}
	if len(list.Values) != meta.GENOME_SIZE {
		return genome, errors.Errorf("genome %s has %d weights, want %d", path, len(list.Values), meta.GENOME_SIZE)
	}
	for i, v := range list.Values {
		n, ok := v.Kind.(*structpb.Value_NumberValue)
		if !ok {
			return genome, errors.Errorf("genome %s weight %d is not a number", path, i)
		}
		genome[i] = n.NumberValue
	}
	return genome, nil
}
