package journal

import (
	"fmt"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/dekarrin/rezi"
)

// argsRecord is the binary form of a command's argument slots.
type argsRecord command.Args

// EncodeArgs converts args to bytes with REZI.
func EncodeArgs(args command.Args) []byte {
	rec := argsRecord(args)
	return rezi.EncBinary(&rec)
}

// DecodeArgs reads args that were encoded with EncodeArgs.
func DecodeArgs(data []byte) (command.Args, error) {
	var rec argsRecord
	if _, err := rezi.DecBinary(data, &rec); err != nil {
		return command.Args{}, err
	}
	return command.Args(rec), nil
}

func (rec *argsRecord) MarshalBinary() ([]byte, error) {
	var data []byte

	for i := range rec {
		slot := rec[i]
		data = append(data, rezi.EncBool(slot.Present)...)
		if !slot.Present {
			continue
		}

		data = append(data, rezi.EncInt(int(slot.Value.Kind()))...)
		switch v := slot.Value.(type) {
		case command.StringArg:
			data = append(data, rezi.EncString(string(v))...)
		case command.ChoiceArg:
			data = append(data, rezi.EncInt(int(v))...)
		case command.NumberArg:
			data = append(data, rezi.EncInt(int(v))...)
		case command.ItemArg:
			data = append(data, rezi.EncInt(int(v))...)
		case command.DirectionArg:
			data = append(data, rezi.EncInt(int(v))...)
		case command.TargetArg:
			data = append(data, rezi.EncInt(int(v))...)
		case command.PointArg:
			data = append(data, rezi.EncInt(v.X)...)
			data = append(data, rezi.EncInt(v.Y)...)
		default:
			return nil, fmt.Errorf("slot %d: unknown argument type %T", i, slot.Value)
		}
	}

	return data, nil
}

func (rec *argsRecord) UnmarshalBinary(data []byte) error {
	var decoded command.Args

	for i := range decoded {
		present, n, err := rezi.DecBool(data)
		if err != nil {
			return fmt.Errorf("slot %d: present: %w", i, err)
		}
		data = data[n:]
		if !present {
			continue
		}

		kindNum, n, err := rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("slot %d: kind: %w", i, err)
		}
		data = data[n:]

		var arg command.Arg
		kind := command.Kind(kindNum)
		switch kind {
		case command.KindString:
			s, n, err := rezi.DecString(data)
			if err != nil {
				return fmt.Errorf("slot %d: %w", i, err)
			}
			data = data[n:]
			arg = command.StringArg(s)
		case command.KindPoint:
			x, n, err := rezi.DecInt(data)
			if err != nil {
				return fmt.Errorf("slot %d: x: %w", i, err)
			}
			data = data[n:]
			y, n, err := rezi.DecInt(data)
			if err != nil {
				return fmt.Errorf("slot %d: y: %w", i, err)
			}
			data = data[n:]
			arg = command.PointArg{X: x, Y: y}
		default:
			v, n, err := rezi.DecInt(data)
			if err != nil {
				return fmt.Errorf("slot %d: %w", i, err)
			}
			data = data[n:]

			switch kind {
			case command.KindChoice:
				arg = command.ChoiceArg(v)
			case command.KindNumber:
				arg = command.NumberArg(v)
			case command.KindItem:
				arg = command.ItemArg(v)
			case command.KindDirection:
				arg = command.DirectionArg(direction.Dir(v))
			case command.KindTarget:
				arg = command.TargetArg(direction.Dir(v))
			default:
				return fmt.Errorf("slot %d: unknown argument kind %d", i, kindNum)
			}
		}

		if err := decoded.Set(i, arg); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
	}

	*rec = argsRecord(decoded)
	return nil
}
