package marketsdk

import (
	"bytes"
	"encoding/json"
)

// Owner is the user an offer belongs to. When only ID is set it is encoded
// as a bare JSON string.
type Owner struct {
	ID      string           `json:"_id"`
	Email   string           `json:"email,omitempty"`
	Account *AccountResponse `json:"account,omitempty"`
}

// ownerObject has Owner's fields without its methods.
type ownerObject Owner

func (o Owner) MarshalJSON() ([]byte, error) {
	if o.Email == "" && o.Account == nil {
		return json.Marshal(o.ID)
	}
	return json.Marshal(ownerObject(o))
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		*o = Owner{}
		return json.Unmarshal(data, &o.ID)
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var obj ownerObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*o = Owner(obj)
	return nil
}
