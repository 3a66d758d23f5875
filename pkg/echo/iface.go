package echo

import "net"

// InterfaceIPv4 returns the first IPv4 address assigned to the named
// network interface, or 0.0.0.0 if there isn't one.
func InterfaceIPv4(name string) string {
	if iface, err := net.InterfaceByName(name); err == nil {
		if addrs, err := iface.Addrs(); err == nil {
			for _, addr := range addrs {
				if ipnet, ok := addr.(*net.IPNet); ok {
					if ip4 := ipnet.IP.To4(); ip4 != nil {
						return ip4.String()
					}
				}
			}
		}
	}
	return net.IPv4zero.String()
}

func remoteIP(conn net.Conn) string {
	if addr, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return conn.RemoteAddr().String()
	}
	return host
}
