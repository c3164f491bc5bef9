package weather

import "fmt"

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.At.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return fmt.Errorf("%w: lat and lng must be set together", ErrInvalidInput)
	}
	if req.Lat != nil {
		if *req.Lat < -90 || *req.Lat > 90 {
			return fmt.Errorf("%w: lat must be between -90 and 90", ErrInvalidInput)
		}
		if *req.Lng < -180 || *req.Lng > 180 {
			return fmt.Errorf("%w: lng must be between -180 and 180", ErrInvalidInput)
		}
	}
	return nil
}
