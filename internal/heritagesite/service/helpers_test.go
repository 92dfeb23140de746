package service

import "strconv"

func itoa(id int) string {
	return strconv.Itoa(id)
}
