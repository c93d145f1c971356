package resp

import "strconv"

// Encode appends the wire representation of v to dst and returns the
// extended slice, so a caller building a reply can chain calls without an
// intermediate allocation per value:
//
//	buf = resp.Encode(buf[:0], resp.NewInteger(1))
func Encode(dst []byte, v Value) []byte {
	switch v.Type {
	case SimpleString:
		dst = append(dst, '+')
		dst = append(dst, v.Bytes()...)
		return appendCRLF(dst)

	case Error:
		dst = append(dst, '-')
		dst = append(dst, v.Bytes()...)
		return appendCRLF(dst)

	case Integer:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, v.Int, 10)
		return appendCRLF(dst)

	case BulkString:
		b := v.Bytes()
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(b)), 10)
		dst = appendCRLF(dst)
		dst = append(dst, b...)
		return appendCRLF(dst)

	case Null:
		return append(dst, '$', '-', '1', '\r', '\n')

	case Boolean:
		if v.Bool {
			return append(dst, '#', 't', '\r', '\n')
		}
		return append(dst, '#', 'f', '\r', '\n')

	case BigNumber:
		dst = append(dst, '(')
		dst = append(dst, v.Bytes()...)
		return appendCRLF(dst)

	case Array:
		if v.Array == nil {
			return append(dst, '*', '-', '1', '\r', '\n')
		}
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(v.Array)), 10)
		dst = appendCRLF(dst)
		for _, e := range v.Array {
			dst = Encode(dst, e)
		}
		return dst

	case Set:
		dst = append(dst, '~')
		dst = strconv.AppendInt(dst, int64(len(v.Set)), 10)
		dst = appendCRLF(dst)
		for _, e := range v.Set {
			dst = Encode(dst, e)
		}
		return dst

	case Map:
		dst = append(dst, '%')
		dst = strconv.AppendInt(dst, int64(len(v.Map)), 10)
		dst = appendCRLF(dst)
		for _, e := range v.Map {
			dst = Encode(dst, e.Key)
			dst = Encode(dst, e.Value)
		}
		return dst

	default:
		return append(dst, '$', '-', '1', '\r', '\n')
	}
}

func appendCRLF(dst []byte) []byte {
	return append(dst, '\r', '\n')
}
